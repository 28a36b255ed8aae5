package analysis

import "errors"

// ErrEmptyDataset is returned when an aggregate is requested over a dataset
// with no values. Loading already rejects empty files, so this guards the
// package against misuse when called directly.
var ErrEmptyDataset = errors.New("empty dataset")
