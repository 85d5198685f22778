package matchkey_test

import (
	"fmt"

	"github.com/mfulz/strategist/matchkey"
)

func ExampleMatch() {
	rule := unitKey{A: matchkey.Some(1)}

	fmt.Println(matchkey.Match(rule, unitKey{A: matchkey.Some(1), B: matchkey.Some("x")}))
	fmt.Println(matchkey.Match(rule, unitKey{A: matchkey.Some(2), B: matchkey.Some("x")}))
	fmt.Println(matchkey.Match(unitKey{A: matchkey.Some(1), B: matchkey.Some("x")}, rule))
	// Output:
	// true
	// false
	// false
}

func ExampleFormat() {
	fmt.Println(matchkey.Format(unitKey{B: matchkey.Some("x")}))
	// Output: unit(a=*, b=x)
}
