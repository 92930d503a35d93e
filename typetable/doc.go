// Package typetable holds the mapping from field hash to field kind that drives savefile
// decoding.
//
// Savefiles only store hashes, so the kind of every field comes from an external table. The
// interchange format is a JSON (or YAML) object whose keys are the hashes rendered as signed
// 32-bit decimals:
//
//	{
//	    "-1914497462": "s32",
//	    "1577519593": "string64",
//	    "-563276591": "vector3f_array"
//	}
//
// Negative keys are bit-reinterpreted into unsigned hashes; see ParseHashKey.
//
// A Table is built once, typically at program start, and then shared read-only by every
// savefile.Savefile that needs it:
//
//	table, err := typetable.Load("gamedata.json")
//	if err != nil {
//	    return err
//	}
//	sav, err := savefile.New(table)
package typetable
