// Package analysis turns raw Reddit posts and comments into scored records
// and summarizes them.
//
// Scoring flows one way:
//
//	RawPost -> AnalyzePost -> ScoredPost --\
//	                                        >-- Summarize -> CorpusSummary
//	RawComment -> AnalyzeComment -> ScoredComment --/
package analysis
