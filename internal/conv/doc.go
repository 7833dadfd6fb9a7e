// Package conv converts dataset positions to point IDs.
//
// Point IDs are uint32 while Go lengths are int; every such conversion that
// can overflow goes through this package.
package conv
