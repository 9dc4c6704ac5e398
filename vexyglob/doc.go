// Package vexyglob provides gitignore-aware parallel file finding and
// content search with streaming results.
//
// The package walks a directory tree on a pool of worker goroutines and
// streams matches through a bounded channel, so memory stays constant no
// matter how many entries the tree holds:
//
//	stream, err := vexyglob.Find(ctx, vexyglob.Options{Pattern: "**/*.go"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for res := range stream.Results() {
//		fmt.Println(res.Path)
//	}
//
// Content search yields one result per matching line:
//
//	stream, err := vexyglob.Search(ctx, "TODO", vexyglob.Options{Pattern: "**/*.py"})
//
// Sorting implies eager collection:
//
//	results, err := vexyglob.FindAll(ctx, vexyglob.Options{Sort: vexyglob.SortByPath})
//
// Abandoning a stream early stops the workers at their next send; call
// Close to release them promptly and deterministically.
package vexyglob
