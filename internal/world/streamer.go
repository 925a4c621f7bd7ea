package world

import "runtime"

// streamer generates chunk terrain on background workers. Workers build
// detached chunks and hand them back over a channel; the chunk map is
// only ever mutated on the goroutine calling Update, so the pending set
// needs no locking either.
type streamer struct {
	w       *World
	jobs    chan ChunkCoord
	done    chan *Chunk
	pending map[ChunkCoord]struct{}
}

func newStreamer(w *World) *streamer {
	s := &streamer{
		w:       w,
		jobs:    make(chan ChunkCoord, 4096),
		done:    make(chan *Chunk, 4096),
		pending: make(map[ChunkCoord]struct{}),
	}
	workers := max(runtime.NumCPU(), 1)
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *streamer) close() {
	close(s.jobs)
}

func (s *streamer) worker() {
	for coord := range s.jobs {
		s.done <- NewChunk(coord, s.w.cfg, s.w.noise, s.w)
	}
}

// request queues generation for a missing chunk. Requests for resident
// or already queued chunks are ignored; if the queue is full the request
// is dropped and retried on a later Update.
func (s *streamer) request(coord ChunkCoord) {
	if _, ok := s.pending[coord]; ok {
		return
	}
	if s.w.ChunkAt(coord) != nil {
		return
	}
	select {
	case s.jobs <- coord:
		s.pending[coord] = struct{}{}
	default:
	}
}

// install drains finished chunks without blocking.
func (s *streamer) install() {
	for {
		select {
		case c := <-s.done:
			s.finish(c)
		default:
			return
		}
	}
}

// wait blocks until every queued chunk has been installed.
func (s *streamer) wait() {
	for len(s.pending) > 0 {
		s.finish(<-s.done)
	}
}

func (s *streamer) finish(c *Chunk) {
	delete(s.pending, c.coord)
	s.w.installChunk(c)
}
