package seqcli

import (
	"bufio"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"

	"go.llib.dev/lazykit/pkg/boltstore"
	"go.llib.dev/lazykit/pkg/lazykit"
)

// session holds the resources of a single command run.
type session struct {
	opts   []lazykit.Option
	pulled int
	closer []func() error
}

func (app App) open() (*session, error) {
	var sess session
	switch app.Config.Storage {
	case StorageChunked:
		size := app.Config.ChunkSize
		sess.opts = append(sess.opts, lazykit.WithStorage(func() lazykit.Storage[string] {
			return &lazykit.ChunkedBuffer[string]{ChunkSize: size}
		}))
	case StorageBolt:
		path := app.Config.BoltPath
		if path == "" {
			path = filepath.Join(os.TempDir(), "lazyseq-"+uuid.NewV4().String()+".db")
			sess.closer = append(sess.closer, func() error { return os.Remove(path) })
		}
		db, err := bolt.Open(path, 0600, nil)
		if err != nil {
			return nil, errorkit.Merge(err, sess.Close())
		}
		sess.closer = append(sess.closer, db.Close)

		mk := boltstore.Factory[string](db)
		var stores []*boltstore.Storage[string]
		sess.closer = append(sess.closer, func() error {
			var errs []error
			for _, s := range stores {
				errs = append(errs, s.Drop())
			}
			return errorkit.Merge(errs...)
		})
		sess.opts = append(sess.opts, lazykit.WithStorage(func() lazykit.Storage[string] {
			s := mk().(*boltstore.Storage[string])
			stores = append(stores, s)
			return s
		}))
	}
	return &sess, nil
}

// lines makes a Sequence over the lines of r.
func (sess *session) lines(r io.Reader) *lazykit.Sequence[string] {
	if r == nil {
		r = strings.NewReader("")
	}
	src := iterkit.BufioScanner[string](bufio.NewScanner(r), nil)
	return lazykit.New(counted(src, &sess.pulled), sess.opts...)
}

// counted wraps src and counts every item it hands out.
func counted[T any](src iter.Seq2[T, error], n *int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v, err := range src {
			if err == nil {
				*n++
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// Close releases the resources in the reverse order of their acquisition.
func (sess *session) Close() error {
	var errs []error
	for _, c := range slices.Backward(sess.closer) {
		errs = append(errs, c())
	}
	sess.closer = nil
	return errorkit.Merge(errs...)
}
