// internal/model/word.go
package model

// Word is one vocabulary entry loaded from an HSK word list.
// Chinese is the identity of the entry: two words with the same
// Chinese form are the same vocabulary item.
type Word struct {
	Chinese        string `json:"chinese"`
	Pinyin         string `json:"pinyin"`
	Meaning        string `json:"meaning"`
	HanViet        string `json:"han_viet,omitempty"`
	NghiaTiengViet string `json:"nghia_tieng_viet,omitempty"`
	CachDung       string `json:"cach_dung,omitempty"`
}

// Key returns the identity of the entry.
func (w Word) Key() string {
	return w.Chinese
}

// UpdateConfigRequest is the DTO for configuration changes.
// Both fields are optional; absent fields keep their current value.
type UpdateConfigRequest struct {
	HSKLevel  *int `json:"hsk_level,omitempty" validate:"omitempty,min=1,max=6"`
	PatchSize *int `json:"words_per_patch,omitempty" validate:"omitempty,min=1"`
}

// StartSessionRequest asks the engine to open a quiz session.
type StartSessionRequest struct {
	Mode    string `json:"mode" validate:"required,oneof=learn test revision_practice revision_test"`
	Patches int    `json:"patches,omitempty" validate:"omitempty,min=1"`
}

// SubmitAnswerRequest carries one typed pinyin answer.
type SubmitAnswerRequest struct {
	Answer *string `json:"answer" validate:"required"`
}
