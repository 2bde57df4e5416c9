package renderer

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the finished pixels of one row
type RowResult struct {
	Row     int
	Pixels  []core.Color
	Samples int // Samples taken across the row
}

// WorkerPool renders rows in parallel. Tasks are queued up front and results
// are handed back on the caller's goroutine, so no I/O or shared writes
// happen inside the workers.
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   <-chan RowTask
	resultQueue chan<- RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		raytracer:  raytracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders rows [0, rows) and calls handle once per finished row, in
// completion order, from the calling goroutine
func (wp *WorkerPool) Run(rows int, handle func(RowResult)) error {
	taskQueue := make(chan RowTask, rows)
	resultQueue := make(chan RowResult, rows)

	for row := 0; row < rows; row++ {
		taskQueue <- RowTask{Row: row}
	}
	close(taskQueue) // No more tasks

	var g errgroup.Group
	for i := 0; i < wp.numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   wp.raytracer,
			taskQueue:   taskQueue,
			resultQueue: resultQueue,
		}
		g.Go(worker.run)
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(resultQueue)
	}()

	received := 0
	for result := range resultQueue {
		handle(result)
		received++
	}

	if err := <-done; err != nil {
		return err
	}
	if received != rows {
		return fmt.Errorf("worker pool finished with %d of %d rows", received, rows)
	}
	return nil
}

// run is the main worker loop
func (w *Worker) run() error {
	for task := range w.taskQueue {
		if task.Row < 0 || task.Row >= w.raytracer.config.Height {
			return fmt.Errorf("worker %d: row %d outside image of height %d", w.ID, task.Row, w.raytracer.config.Height)
		}

		pixels, samples := w.raytracer.RenderRow(task.Row)
		w.resultQueue <- RowResult{
			Row:     task.Row,
			Pixels:  pixels,
			Samples: samples,
		}
	}
	return nil
}
