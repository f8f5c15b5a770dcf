package taipas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/pasconfigs"
	"github.com/reusee/taipas/syncs"
)

// RunFiles runs each file with its own driver and session. Files run
// concurrently; their output is written in argument order.
type RunFiles func(ctx context.Context, paths []string) (Result, error)

func (Module) RunFiles(
	newDriver NewDriver,
	parallel pasconfigs.Parallel,
	output Output,
	logger logs.Logger,
) RunFiles {
	return func(ctx context.Context, paths []string) (Result, error) {
		sem := syncs.NewSemaphore(max(1, int(parallel)))

		type fileResult struct {
			output bytes.Buffer
			result Result
			err    error
		}
		results := make([]fileResult, len(paths))

		wg := new(sync.WaitGroup)
		for i, path := range paths {
			res := &results[i]
			if err := sem.AcquireContext(ctx); err != nil {
				res.err = err
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release()
				res.result, res.err = runFile(ctx, newDriver(&res.output), path)
				logger.DebugContext(ctx, "file done",
					"path", path,
					"units", res.result.Units,
					"failed", res.result.Failed,
				)
			}()
		}
		wg.Wait()

		var total Result
		var errs []error
		for i := range results {
			res := &results[i]
			if _, err := io.Copy(output, &res.output); err != nil {
				errs = append(errs, err)
			}
			total.Units += res.result.Units
			total.Failed += res.result.Failed
			total.Errors = append(total.Errors, res.result.Errors...)
			if res.err != nil {
				errs = append(errs, res.err)
			}
		}
		return total, errors.Join(errs...)
	}
}

func runFile(ctx context.Context, driver *Driver, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	result, err := driver.Run(ctx, f)
	if err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
