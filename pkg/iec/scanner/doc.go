// Package scanner masks comments and string literals in declaration text
// and cuts declaration files into candidate units.
//
// Declaration files have no formal grammar: documentation comments may hold
// keywords, brackets or semicolons. Scan produces a code view of the text in
// which comment bytes and string bodies are spaces, so keyword searches and
// bracket counting are never confused by documentation. Offsets are shared
// between both views.
//
// The splitters are stateful and recover from malformed input: a broken unit
// produces a warning and extraction continues with the next one.
//
//	units, warnings := scanner.SplitTypeFile("MpAxis.typ", text)
//	for _, u := range units {
//	    fmt.Println(u.Kind, u.Name, u.Location)
//	}
package scanner
