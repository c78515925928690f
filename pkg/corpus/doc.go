/*
Package corpus acquires training text for the markov package.

It reads whole corpus files from disk and keeps a small library of named
corpora in a SQLite database. Each corpus is an ordered set of documents;
training a model from a corpus feeds the documents to the model one at a time
so that no window spans two documents.
*/
package corpus
