package norms

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsForParallel is the row count below which goroutine dispatch
// overhead beats the win from fanning rows out; small batches stay serial.
var minRowsForParallel = 64

// forEachRow runs fn for every row index. Rows are independent, so once the
// batch is large enough they are chunked across one worker per CPU.
func forEachRow(rows int, fn func(r int)) {
	workers := runtime.GOMAXPROCS(0)
	if rows < minRowsForParallel || workers <= 1 {
		for r := 0; r < rows; r++ {
			fn(r)
		}
		return
	}

	if workers > rows {
		workers = rows
	}
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < rows; start += chunk {
		start := start // per-iteration copy: Go 1.21 closures share the loop variable
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			for r := start; r < end; r++ {
				fn(r)
			}
			return nil
		})
	}
	// Workers only ever return nil.
	_ = g.Wait()
}
