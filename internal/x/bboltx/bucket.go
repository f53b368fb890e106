package bboltx

import "go.etcd.io/bbolt"

// CreateBucketIfNotExists creates nested buckets with names given by the
// elements of path.
func CreateBucketIfNotExists(p BucketParent, path ...[]byte) *bbolt.Bucket {
	if len(path) == 0 {
		panic("at least one path element must be provided")
	}

	var (
		b   *bbolt.Bucket
		err error
	)

	for _, n := range path {
		b, err = p.CreateBucketIfNotExists(n)
		Must(err)

		p = b
	}

	return b
}

// Bucket gets nested buckets with names given by the elements of path.
//
// It returns nil if any of the nested buckets does not exist.
func Bucket(p BucketParent, path ...[]byte) (b *bbolt.Bucket) {
	if len(path) == 0 {
		panic("at least one path element must be provided")
	}

	for _, n := range path {
		b = p.Bucket(n)
		if b == nil {
			return nil
		}

		p = b
	}

	return b
}

// GetPath returns the value stored under the last element of path, within
// the nested buckets named by the preceding elements.
//
// It returns nil if the value or any of the buckets does not exist.
func GetPath(p BucketParent, path ...[]byte) []byte {
	n := len(path) - 1

	if n > 0 {
		b := Bucket(p, path[:n]...)
		if b == nil {
			return nil
		}
		return b.Get(path[n])
	}

	if b, ok := p.(*bbolt.Bucket); ok {
		return b.Get(path[0])
	}

	panic("at least two path elements must be provided")
}

// PutPath stores v under the last element of path, creating the nested buckets
// named by the preceding elements as necessary.
func PutPath(p BucketParent, v []byte, path ...[]byte) {
	n := len(path) - 1
	b := CreateBucketIfNotExists(p, path[:n]...)
	Must(b.Put(path[n], v))
}

// DeletePath deletes the value stored under the last element of path.
//
// Buckets that are left empty are not removed.
func DeletePath(p BucketParent, path ...[]byte) {
	n := len(path) - 1

	if b := Bucket(p, path[:n]...); b != nil {
		Must(b.Delete(path[n]))
	}
}

// ForEach calls fn for each key/value pair in the bucket named by path.
//
// It does nothing if the bucket does not exist.
func ForEach(p BucketParent, fn func(k, v []byte), path ...[]byte) {
	b := Bucket(p, path...)
	if b == nil {
		return
	}

	Must(b.ForEach(func(k, v []byte) error {
		fn(k, v)
		return nil
	}))
}
