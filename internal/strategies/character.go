package strategies

import (
	"go.uber.org/zap"

	"github.com/mfulz/strategist/dispatch"
	"github.com/mfulz/strategist/matchkey"
)

// CategoryCharacter is the category of CharacterKey.
const CategoryCharacter matchkey.Category = "char"

// CharacterKey selects strategies by character and AI level.
type CharacterKey struct {
	CharID  matchkey.Opt[int] `yaml:"char_id"`
	AILevel matchkey.Opt[int] `yaml:"ai_level"`
}

// Category implements matchkey.Key.
func (CharacterKey) Category() matchkey.Category { return CategoryCharacter }

// Fields implements matchkey.Key.
func (k CharacterKey) Fields() []matchkey.Field {
	return []matchkey.Field{
		{Name: "char_id", Slot: k.CharID},
		{Name: "ai_level", Slot: k.AILevel},
	}
}

func (k CharacterKey) String() string { return matchkey.Format(k) }

// CharacterStrategy applies to every character.
type CharacterStrategy struct {
	name string
	key  CharacterKey
}

// BeforeAttack implements Strategy.
func (s *CharacterStrategy) BeforeAttack() {
	zap.L().Named("strategies").Info("before attack",
		zap.String("strategy", s.name),
		zap.Stringer("key", s.key))
}

// Name returns the strategy type name.
func (s *CharacterStrategy) Name() string { return s.name }

// ExampleStrategy applies to character 1 at any AI level.
type ExampleStrategy struct{ CharacterStrategy }

// ExampleStrategyEasy applies to character 1 at AI level 1.
type ExampleStrategyEasy struct{ CharacterStrategy }

// ExampleStrategyHard applies to character 1 at AI level 2.
type ExampleStrategyHard struct{ CharacterStrategy }

var (
	characterKey = CharacterKey{} // wildcard for all
	exampleKey   = CharacterKey{CharID: matchkey.Some(1)}
	easyKey      = CharacterKey{CharID: matchkey.Some(1), AILevel: matchkey.Some(1)}
	hardKey      = CharacterKey{CharID: matchkey.Some(1), AILevel: matchkey.Some(2)}
)

var (
	// Character is the catch-all character strategy type.
	Character = &dispatch.Type[Strategy]{
		Name:   "CharacterStrategy",
		Key:    characterKey,
		Parent: Base,
		New: func() Strategy {
			return &CharacterStrategy{name: "CharacterStrategy", key: characterKey}
		},
	}

	Example = &dispatch.Type[Strategy]{
		Name:   "ExampleStrategy",
		Key:    exampleKey,
		Parent: Character,
		New: func() Strategy {
			return &ExampleStrategy{CharacterStrategy{name: "ExampleStrategy", key: exampleKey}}
		},
	}

	ExampleEasy = &dispatch.Type[Strategy]{
		Name:   "ExampleStrategyEasy",
		Key:    easyKey,
		Parent: Character,
		New: func() Strategy {
			return &ExampleStrategyEasy{CharacterStrategy{name: "ExampleStrategyEasy", key: easyKey}}
		},
	}

	ExampleHard = &dispatch.Type[Strategy]{
		Name:   "ExampleStrategyHard",
		Key:    hardKey,
		Parent: Character,
		New: func() Strategy {
			return &ExampleStrategyHard{CharacterStrategy{name: "ExampleStrategyHard", key: hardKey}}
		},
	}
)

func init() {
	matchkey.RegisterCategory[CharacterKey]()

	Registry.MustRegister(Character)
	Registry.MustRegister(Example)
	Registry.MustRegister(ExampleEasy)
	Registry.MustRegister(ExampleHard)
}
