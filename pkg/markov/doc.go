/*
Package markov provides a small, in-memory, character-level Markov language
model for Go.

A Model is built with a fixed window length. Training scans a corpus and
records, for every window of that many consecutive characters, how often each
character followed it. The counts are turned into cumulative probability
distributions, which Generate then samples from to extend a seed text one
character at a time.

Windows and characters are Unicode code points, not bytes.
*/
package markov
