package buffer

import (
	"github.com/modaltext/core/internal/engine/content"
	"github.com/modaltext/core/internal/engine/position"
)

// WordDatabase is the word-completion index every insert/delete keeps in
// sync, when Properties.WordDatabaseEnabled. Its storage lives entirely
// outside this package; a Buffer only ever adds or removes whole
// identifier words.
type WordDatabase interface {
	AddWord(word string)
	RemoveWord(word string)
}

// identifierWordsOnLine collects the text of every Identifier-kind word
// on line, in left-to-right order.
func identifierWordsOnLine(c *content.Content, line uint32) []string {
	var words []string
	w, _, right := c.WordsFrom(position.Pos{Line: line, Column: 0})
	if w.Kind == content.WordIdentifier {
		words = append(words, w.Text)
	}
	for {
		nw, ok := right.Next()
		if !ok || nw.Range.From.Line != line {
			break
		}
		if nw.Kind == content.WordIdentifier {
			words = append(words, nw.Text)
		}
	}
	return words
}

func removeWordsOnLine(words WordDatabase, c *content.Content, line uint32) {
	for _, w := range identifierWordsOnLine(c, line) {
		words.RemoveWord(w)
	}
}

func addWordsOnLine(words WordDatabase, c *content.Content, line uint32) {
	for _, w := range identifierWordsOnLine(c, line) {
		words.AddWord(w)
	}
}

func addWordsInRange(words WordDatabase, c *content.Content, fromLine, toLine uint32) {
	for line := fromLine; line <= toLine; line++ {
		addWordsOnLine(words, c, line)
	}
}

func removeWordsInRange(words WordDatabase, c *content.Content, fromLine, toLine uint32) {
	for line := fromLine; line <= toLine; line++ {
		removeWordsOnLine(words, c, line)
	}
}
