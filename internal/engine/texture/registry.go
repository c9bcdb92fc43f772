package texture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/logger"
)

// MaxSlots is the number of texture units the registry hands out.
// The unit after the last slot is reserved for the shadow map.
const MaxSlots = 15

var (
	// ErrDuplicateTag is returned when a tag is already registered.
	ErrDuplicateTag = errors.New("texture tag already registered")
	// ErrFull is returned once every slot is taken.
	ErrFull = errors.New("texture registry full")
)

// Entry is one registered texture. Its slot is its index in load order.
type Entry struct {
	Tag    string
	Handle uint32
}

// Source names an image file and the tag it registers under.
type Source struct {
	Path string
	Tag  string
}

// Registry maps tags to uploaded textures and their bind slots.
// It is not safe for concurrent use; only LoadAll decodes off-thread.
type Registry struct {
	// ReadFile reads an image file. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
	// Workers bounds parallel decoding in LoadAll.
	Workers int

	gpu     GPU
	entries []Entry
	slots   map[string]int
	log     *zap.Logger
}

// NewRegistry returns an empty registry uploading through gpu.
func NewRegistry(gpu GPU, log *zap.Logger) *Registry {
	if log == nil {
		log = logger.Named("texture")
	}
	return &Registry{
		ReadFile: os.ReadFile,
		Workers:  4,
		gpu:      gpu,
		slots:    make(map[string]int),
		log:      log,
	}
}

// Load decodes the image at path and registers it under tag.
// On failure nothing is registered and no slot is consumed.
func (r *Registry) Load(path, tag string) error {
	if err := r.admit(tag); err != nil {
		r.logFailure(path, tag, err)
		return err
	}
	img, err := r.decodeFile(path)
	if err != nil {
		r.logFailure(path, tag, err)
		return err
	}
	return r.register(path, tag, img)
}

type decoded struct {
	img *Image
	err error
}

// LoadAll decodes sources in parallel and registers them in order, so slots
// match what sequential Load calls would assign. The returned slice holds
// one error (or nil) per source.
func (r *Registry) LoadAll(ctx context.Context, sources []Source) []error {
	results := make([]decoded, len(sources))
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	pool := worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	defer retire(pool, workers)

	var wg sync.WaitGroup
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			results[i].err = err
			continue
		}
		wg.Add(1)
		idx, path := i, src.Path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					results[idx].err = err
					return nil, err
				}
				img, err := r.decodeFile(path)
				results[idx] = decoded{img: img, err: err}
				return nil, err
			},
		})
	}
	wg.Wait()

	errs := make([]error, len(sources))
	for i, src := range sources {
		if err := results[i].err; err != nil {
			r.logFailure(src.Path, src.Tag, err)
			errs[i] = err
			continue
		}
		if err := r.admit(src.Tag); err != nil {
			r.logFailure(src.Path, src.Tag, err)
			errs[i] = err
			continue
		}
		errs[i] = r.register(src.Path, src.Tag, results[i].img)
	}
	return errs
}

// retire ends every worker goroutine of pool. The pool's own Stop matches
// stop signals to worker ids and drops mismatches, so with several workers
// some would block forever. An exiting task is taken by exactly one worker.
func retire(pool worker.DynamicWorkerPool, workers int) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		pool.SubmitTask(worker.Task{
			ID: -1 - i,
			Do: func() (any, error) {
				defer wg.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (r *Registry) admit(tag string) error {
	if _, ok := r.slots[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	if len(r.entries) >= MaxSlots {
		return ErrFull
	}
	return nil
}

func (r *Registry) decodeFile(path string) (*Image, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (r *Registry) register(path, tag string, img *Image) error {
	handle, err := r.gpu.Upload(img)
	if err != nil {
		err = fmt.Errorf("upload %s: %w", path, err)
		r.logFailure(path, tag, err)
		return err
	}
	r.slots[tag] = len(r.entries)
	r.entries = append(r.entries, Entry{Tag: tag, Handle: handle})
	r.log.Debug("texture loaded",
		zap.String("tag", tag),
		zap.String("path", path),
		zap.Int("slot", r.slots[tag]),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels))
	return nil
}

func (r *Registry) logFailure(path, tag string, err error) {
	r.log.Warn("texture load failed",
		zap.String("tag", tag),
		zap.String("path", path),
		zap.Error(err))
}

// FindSlot returns the bind slot for tag, or -1.
func (r *Registry) FindSlot(tag string) int {
	if slot, ok := r.slots[tag]; ok {
		return slot
	}
	return -1
}

// FindHandle returns the GPU handle for tag, or -1.
func (r *Registry) FindHandle(tag string) int {
	if slot, ok := r.slots[tag]; ok {
		return int(r.entries[slot].Handle)
	}
	return -1
}

// BindAll binds every texture to the unit matching its slot.
func (r *Registry) BindAll() {
	for slot, e := range r.entries {
		r.gpu.Bind(slot, e.Handle)
	}
}

// Count returns the number of registered textures.
func (r *Registry) Count() int {
	return len(r.entries)
}

// Entries returns a copy of the registered entries in slot order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Destroy releases every texture and empties the registry.
func (r *Registry) Destroy() {
	handles := make([]uint32, len(r.entries))
	for i, e := range r.entries {
		handles[i] = e.Handle
	}
	r.gpu.Delete(handles)
	r.entries = nil
	r.slots = make(map[string]int)
}
