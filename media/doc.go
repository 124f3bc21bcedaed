// Package media extracts the images embedded in a document, renames them
// with a batch-wide sequence and rewrites the references to them.
//
// A single [Sequence] is shared by every document of a batch run so that
// image numbers never repeat, even when documents are converted in
// parallel. Each document gets its own [Renamer], which draws numbers from
// the sequence, skips names that already exist on disk and records the
// mapping in a [model.RenameMap]. [RewriteReferences] then applies the map
// to the document markup.
package media
