// Package cohesion measures how tightly a set of short texts cluster around
// one center text, without embeddings or a language model.
//
// Every text is reduced to the set of distinct characters it contains. The
// distance between two texts is the number of characters present in exactly
// one of them. Over the distances of a list to its center the package reports
// mean, standard deviation, coefficient of variation and mode, and searches
// for the Jenks natural-breaks partition whose widest bin is the tightest.
//
//	a, _ := cohesion.New(cohesion.WithStopWords("的", "了"))
//	a.SetCenter("感冒第二天了，嗓子完全沙哑了")
//	a.SetList(titles)
//	cv, ok := a.Dispersion()
//	p, _ := a.BestPartition(9)
//	fmt.Println(p.Bins, p.MaxStdDev)
//
// A small chosen bin count means the list converged on the center; a large
// one means it is dispersed.
package cohesion
