// Package savefile decodes and edits savefile buffers in memory.
//
// A Savefile owns one raw buffer. Read detects the byte order from the header probe word,
// validates the header against the known releases and indexes the first slot of every field
// hash. Field kinds come from a shared, immutable typetable.Table.
//
// # Reading and Writing
//
//	sav, err := savefile.New(table, savefile.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := sav.Read(buf); err != nil {
//	    return err
//	}
//
//	rupees, err := sav.GetS32("CurrentRupee")
//	err = sav.Add("CurrentRupee", 50)
//	err = sav.Set("PlayerSavePos", []float32{1, 2, 3})
//	err = sav.Set("Items[4]", "Item_Apple")
//	z, err := sav.GetF32("Positions[1][2]")
//
// Keys may carry one or two indices. Name[i] addresses one element of a vector or array and
// Name[i][j] one component of an element of a vector array.
//
// Set validates the whole write before touching the buffer, so a rejected Set leaves every
// byte unchanged. Edits happen in place: Raw returns the live buffer, ready to be written out
// by the caller.
//
// # Snapshots
//
// Backup stores a snapshot of the buffer, optionally compressed (see WithBackupCompression),
// and Restore rolls the buffer back to it. Clone produces an independent copy with its own
// index. Diff and ChangedFields compare two savefiles word by word.
//
// A Savefile is not safe for concurrent use.
package savefile
