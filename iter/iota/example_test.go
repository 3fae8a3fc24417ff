package iota_test

import (
	"context"
	"fmt"

	"github.com/bachmak/go-ranges/iter/iota"
)

func ExampleNewBounded() {
	ctx := context.Background()
	iter := iota.NewBounded(1, 4)

	for iter.Next(ctx) {
		fmt.Printf("Number: %d\n", iter.Get())
	}

	if err := iter.Error(); err != nil {
		panic(err)
	}

	// output:
	// Number: 1
	// Number: 2
	// Number: 3
	// Number: 4
}
