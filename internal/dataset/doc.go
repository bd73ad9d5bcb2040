// Package dataset holds a loaded group snapshot and answers queries about it.
//
// A Dataset is opened once from a snapshot file and owned by the caller.
// Nothing is cached behind the caller's back: Reload re-reads the file
// explicitly.
//
//	ds, err := dataset.Open("~/.local/share/ietf-groups/groups.yaml")
//	if err != nil {
//		return err
//	}
//	if g, ok := ds.FindGroup("HTTPBIS"); ok {
//		fmt.Println(g.Name)
//	}
package dataset
