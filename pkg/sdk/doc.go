// Package finrag embeds the financial retrieval engine in a Go program.
//
// The engine indexes FAQ entries and fund performance records twice: as dense
// embeddings compared by inner product, and as a tf-idf bag of words compared by
// cosine similarity. Queries run in one of three modes:
//   - semantic: dense inner product only
//   - lexical: tf-idf cosine only
//   - hybrid: a weighted sum of both (0.7 semantic, 0.3 lexical by default)
//
// # Quick start
//
//	docs, _ := finrag.LoadCSV(faqFile, fundFile)
//	engine, _ := finrag.New(ctx, docs, finrag.WithHashingEmbedder(384))
//	results, _ := engine.Retrieve(ctx, "fund with the best sharpe ratio", finrag.ModeHybrid, 5)
//
// Without WithEmbedder the engine uses a local feature-hashing embedder, which
// needs no network access but only captures surface similarity.
package finrag
