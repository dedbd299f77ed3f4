package caption

import "fmt"

const (
	SOS = "<SOS>" // start of sentence
	EOS = "<EOS>" // end of sentence
	UNK = "<UNK>" // out of vocabulary word
)

// Vocabulary maps tokens to ids. Id is index in Words.
type Vocabulary struct {
	Words []string
	ids   map[string]int
}

func NewVocabulary(words []string) (*Vocabulary, error) {
	v := Vocabulary{
		Words: words,
		ids:   make(map[string]int, len(words)),
	}
	for i, word := range words {
		if _, ok := v.ids[word]; ok {
			return nil, fmt.Errorf("duplicate word(%s) at %d", word, i)
		}
		v.ids[word] = i
	}
	for _, special := range []string{SOS, EOS} {
		if _, ok := v.ids[special]; !ok {
			return nil, fmt.Errorf("vocabulary has no %s token", special)
		}
	}
	return &v, nil
}

func (v *Vocabulary) Len() int { return len(v.Words) }

// ID returns id of word, or id of UNK when word is unknown and UNK is present.
func (v *Vocabulary) ID(word string) (int, bool) {
	if id, ok := v.ids[word]; ok {
		return id, true
	}
	id, ok := v.ids[UNK]
	return id, ok
}

func (v *Vocabulary) Word(id int) string { return v.Words[id] }
