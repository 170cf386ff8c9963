package aggregator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"image_fetcher/internal/domain"
)

func TestMix_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for run := 0; run < 20; run++ {
		input := randomRecords(rng, rng.IntN(30))
		snapshot := append([]domain.ImageRecord(nil), input...)

		out := Mix(input)

		assert.Len(t, out, len(input))
		assert.ElementsMatch(t, input, out)
		assert.Equal(t, snapshot, input, "input must not be reordered in place")
	}
}

func TestMix_Empty(t *testing.T) {
	assert.Empty(t, Mix(nil))
}
