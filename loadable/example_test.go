package loadable_test

import (
	"context"
	"fmt"

	"github.com/tinora/processed/cell"
	"github.com/tinora/processed/loadable"
)

func ExampleLoadable_LoadSync() {
	c := cell.New(loadable.Absent[int]())
	l, err := loadable.New(c, nil)
	if err != nil {
		panic(err)
	}

	remove := l.Observe(func(s loadable.State[int]) {
		fmt.Println(s)
	})
	defer remove()

	l.LoadSync(context.Background(), func(ctx context.Context, yield func(int)) (int, error) {
		yield(1)
		yield(2)
		return 0, nil
	})

	// Output:
	// Pending
	// Succeeded(1)
	// Succeeded(2)
}
