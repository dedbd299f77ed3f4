package dataset

import (
	"errors"
	"math/rand"
)

var ErrNoImages = errors.New("no test images")

// PickRandom shuffles copy of ids and returns first one.
// Same rng seed and ids give same pick.
func PickRandom(ids []int, rng *rand.Rand) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoImages
	}
	shuffled := make([]int, len(ids))
	copy(shuffled, ids)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[0], nil
}
