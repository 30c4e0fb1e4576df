/*
Package catalog stores named template sources and serves parsed templates.

# Stores

Two Store implementations are provided:

  - MemoryStore keeps entries in process memory
  - SQLiteStore keeps entries in a SQLite database (modernc.org/sqlite, no cgo)

Every Save is an upsert keyed by name. The first save assigns a UUID and
revision 1; later saves keep the ID and bump the revision.

# Catalog

Catalog sits on top of a Store. Put parses the text under the entry's
options and key rule before saving, so the store only ever holds templates
that parse. Template returns a clone of a cached parsed prototype:

	cat := catalog.New(store)
	if _, err := cat.Put(ctx, "greeting", "hello ${name}", markings.DefaultOpts(), rules.Ident); err != nil {
		return err
	}
	tmpl, err := cat.Template(ctx, "greeting")
	if err != nil {
		return err
	}
	out, err := tmpl.Apply(markings.Values{"name": "world"})
*/
package catalog
