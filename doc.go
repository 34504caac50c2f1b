/*
Package chash provides an in-memory hash table keyed by byte strings, using
separate chaining for collisions.

Basic usage:

	import "github.com/theflywheel/chash"

	// Create a table with 8 buckets
	t, err := chash.New[string](8)
	if err != nil {
		log.Fatal(err)
	}
	defer t.Destroy()

	// Insert data
	if _, err := t.Insert([]byte("2"), "blue"); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	if e, ok := t.Lookup([]byte("2")); ok {
		fmt.Println("Value:", e.Value())
	}

	// Remove data
	t.Delete([]byte("2"))

Features:

  - Arbitrary byte-string keys, including the empty key
  - Values of any type, stored as given and never released by the table
  - djb2 (xor variant) hashing by default, xxHash via WithHasher(XXHash)
  - Directory growth triggered by collisions rather than load factor

Implementation Details:

The table keeps a directory of bucket heads. Each bucket heads a singly
linked chain of entries. Entries are linked by handle through a slot table,
so an *Entry keeps its address while the table grows. A deleted entry is
never handed out again; a held *Entry reports Deleted instead.
New keys are appended to the tail of their chain.

Whenever a new key is appended to a chain that already held an entry, the
directory is grown by the growth factor (8 by default) and every entry is
rehashed into it. This is a deliberately aggressive policy: a single
collision in a small table multiplies its size. Growth beyond the configured
maximum number of buckets is skipped without failing the insert. The
directory never shrinks.

A Table is not safe for concurrent use. Callers that share one across
goroutines must guard every call, Lookup included, with a single lock, since
a returned *Entry aliases the table's storage.
*/
package chash
