// internal/model/progress.go
package model

// Progress is the persisted patch cursor state. ShuffledIndices is a
// permutation of [0, N) where N is the word count of the loaded level;
// an empty slice means the cursor has never been initialized.
type Progress struct {
	CurrentIndex    int   `json:"current_index"`
	ShuffledIndices []int `json:"shuffled_indices"`
}
