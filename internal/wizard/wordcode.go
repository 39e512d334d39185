package wizard

import (
	"math"
	"strings"
)

// wordList feeds the stub geocoder.
var wordList = []string{
	"amber", "basket", "candle", "drift", "ember", "fable", "glider", "harbour",
	"island", "jigsaw", "kettle", "lantern", "meadow", "nimble", "orchard", "pebble",
	"quill", "ribbon", "saddle", "timber", "umbrella", "velvet", "willow", "yonder",
}

// WordCode derives a three-word location code from a coordinate at roughly
// ten metre resolution.
func WordCode(lat, lng float64) string {
	a := uint64(math.Round(math.Abs(lat) * 10000))
	b := uint64(math.Round(math.Abs(lng) * 10000))
	n := uint64(len(wordList))

	mix := a*31 + b*17
	words := []string{
		wordList[mix%n],
		wordList[(mix/n+a)%n],
		wordList[(mix/(n*n)+b)%n],
	}
	return strings.Join(words, ".")
}
