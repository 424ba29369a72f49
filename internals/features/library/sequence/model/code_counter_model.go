// file: internals/features/library/sequence/model/code_counter_model.go
package model

// CodeCounterModel adalah counter per jenis entitas untuk kode human-readable
// (MBR001, LN000001, STF001). Increment dilakukan atomik di SQL, bukan
// read-max-then-format, supaya dua request bersamaan tidak mencetak kode sama.
type CodeCounterModel struct {
	CounterKey   string `gorm:"type:varchar(20);primaryKey;column:counter_key" json:"counter_key"`
	CounterValue int64  `gorm:"not null;default:0;column:counter_value" json:"counter_value"`
}

func (CodeCounterModel) TableName() string { return "code_counters" }
