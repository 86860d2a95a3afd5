package rwcoord

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConcurrentReadersAllowed(t *testing.T) {
	c := New()
	var active int32
	var maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := c.AcquireRead()
			defer tok.Release()
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()
	require.Greater(t, maxActive, int32(1), "expected more than one reader to run concurrently")
}

func TestWriterExcludesReaders(t *testing.T) {
	c := New()
	wtok := c.AcquireWrite()

	readerEntered := make(chan struct{})
	go func() {
		rtok := c.AcquireRead()
		close(readerEntered)
		rtok.Release()
	}()

	select {
	case <-readerEntered:
		t.Fatal("reader entered while writer held the coordinator")
	case <-time.After(20 * time.Millisecond):
	}

	wtok.Release()
	select {
	case <-readerEntered:
	case <-time.After(time.Second):
		t.Fatal("reader never admitted after writer released")
	}
}

func TestWriterPrecedenceBlocksNewReaders(t *testing.T) {
	c := New()
	r1 := c.AcquireRead()

	writerWaiting := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		close(writerWaiting)
		w := c.AcquireWrite()
		w.Release()
		close(writerDone)
	}()
	<-writerWaiting
	time.Sleep(10 * time.Millisecond) // let the writer register as waiting

	newReaderEntered := make(chan struct{})
	go func() {
		r := c.AcquireRead()
		close(newReaderEntered)
		r.Release()
	}()

	select {
	case <-newReaderEntered:
		t.Fatal("new reader entered while a writer was waiting")
	case <-time.After(20 * time.Millisecond):
	}

	r1.Release()
	<-writerDone
	<-newReaderEntered
}
