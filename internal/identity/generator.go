package identity

import (
	"fmt"
	"math/rand/v2"

	"unimatch_backend/internal/models"
	"unimatch_backend/pkg/apperrors"
)

// maxAttempts caps the generate-and-check loop. The combination space
// (~40 adjectives x ~40 nouns x 900 suffixes) is large relative to expected
// user counts, so collisions past this ceiling indicate something is wrong.
const maxAttempts = 10

var adjectives = []string{
	"amber", "bold", "brave", "bright", "calm", "clever", "cosmic", "crimson",
	"curious", "dapper", "dreamy", "eager", "electric", "fierce", "frosty",
	"gentle", "golden", "happy", "hidden", "honest", "jolly", "keen", "lively",
	"lucky", "lunar", "mellow", "midnight", "misty", "noble", "quiet", "rapid",
	"scarlet", "silent", "silver", "sly", "sunny", "swift", "velvet", "wild",
	"witty",
}

var nouns = []string{
	"badger", "bear", "comet", "crane", "deer", "dolphin", "eagle", "ember",
	"falcon", "fern", "finch", "fox", "hawk", "heron", "koala", "lark",
	"lemur", "lotus", "lynx", "maple", "meteor", "mole", "moose", "otter",
	"owl", "panda", "pebble", "penguin", "pine", "raven", "river", "robin",
	"sparrow", "sprout", "stag", "swan", "tiger", "willow", "wolf", "wren",
}

// NameExistsFunc reports whether an anonymous name is already taken.
type NameExistsFunc func(name string) (bool, error)

// Generator produces anonymous aliases and avatar glyphs for profiles.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator returns a generator backed by the shared math/rand source.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewSeededGenerator returns a deterministic generator for tests.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{rand: rand.New(rand.NewPCG(seed, seed))}
}

func (g *Generator) intN(n int) int {
	if g.rand != nil {
		return g.rand.IntN(n)
	}
	return rand.IntN(n)
}

// Generate composes one alias: {adjective}{noun}{100-999}.
func (g *Generator) Generate() string {
	adj := adjectives[g.intN(len(adjectives))]
	noun := nouns[g.intN(len(nouns))]
	num := 100 + g.intN(900)
	return fmt.Sprintf("%s%s%d", adj, noun, num)
}

// EnsureUnique generates aliases until exists reports a free one, retrying
// up to maxAttempts times. This is probabilistic, not a reservation: two
// concurrent requests can race past each other's check (see DESIGN.md).
func (g *Generator) EnsureUnique(exists NameExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		name := g.Generate()
		taken, err := exists(name)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !taken {
			return name, nil
		}
	}
	return "", apperrors.ErrAliasExhausted
}

var avatarGlyphs = map[models.Gender][]string{
	models.GenderMale:      {"🦊", "🐺", "🦁", "🐯", "🐻", "🦅"},
	models.GenderFemale:    {"🦋", "🐱", "🦢", "🐰", "🦄", "🐦"},
	models.GenderNonBinary: {"🐼", "🦜", "🐙", "🦉", "🐬", "🦎"},
	models.GenderOther:     {"🌟", "🌙", "🍀", "🌊", "🔥", "🌈"},
}

// Avatar picks a random glyph for the gender category. Unrecognized values
// fall back to the "other" set.
func (g *Generator) Avatar(gender models.Gender) string {
	set, ok := avatarGlyphs[gender]
	if !ok {
		set = avatarGlyphs[models.GenderOther]
	}
	return set[g.intN(len(set))]
}
