package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask represents a tile waiting to be rendered
type TileTask struct {
	Tile   *Tile
	TaskID int
}

// TileResult carries a completed tile back to the orchestrator
type TileResult struct {
	Tile   *Tile
	TaskID int
	Stats  *RenderStats
}

// WorkerPool renders tiles across a fixed set of goroutines. Each worker owns
// its own TileRenderer; all workers write disjoint framebuffer regions.
type WorkerPool struct {
	numWorkers  int
	taskQueue   chan TileTask
	resultQueue chan TileResult
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool with the given number of workers; zero or
// negative means one worker per CPU.
func NewWorkerPool(numWorkers, queueDepth int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers:  numWorkers,
		taskQueue:   make(chan TileTask, queueDepth),
		resultQueue: make(chan TileResult, queueDepth),
	}
}

// NumWorkers returns the pool size
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Start launches the workers. Each worker drains the task queue until it is
// closed or the context is canceled.
func (wp *WorkerPool) Start(ctx context.Context, shader Shader, camera *Camera, samplesPerSide int, fb *Framebuffer) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			tr := NewTileRenderer(shader, camera, samplesPerSide)

			for task := range wp.taskQueue {
				select {
				case <-ctx.Done():
					return
				default:
				}

				stats := tr.RenderTile(task.Tile, fb)

				select {
				case wp.resultQueue <- TileResult{Tile: task.Tile, TaskID: task.TaskID, Stats: stats}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close the result queue once every worker has drained out
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Submit queues the tiles and closes the task queue. Must be called exactly
// once, after Start.
func (wp *WorkerPool) Submit(ctx context.Context, tiles []*Tile) {
	go func() {
		defer close(wp.taskQueue)
		for i, tile := range tiles {
			select {
			case wp.taskQueue <- TileTask{Tile: tile, TaskID: i}:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Results returns the channel of completed tiles. It is closed when all
// workers finish.
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}
