package entity

import (
	"encoding/json"
	"time"

	"github.com/jinzhu/gorm"
	uuid "github.com/satori/go.uuid"

	"github.com/photoprism/clusteval/internal/quality"
)

// Qualities represents a list of stored quality values.
type Qualities []Quality

// Quality represents the value of one measure evaluated for one clustering.
type Quality struct {
	ID           uint      `gorm:"primary_key" json:"-" yaml:"-"`
	RunUID       string    `gorm:"type:VARBINARY(42);index;" json:"RunUID" yaml:"RunUID"`
	JobName      string    `gorm:"type:VARCHAR(160);index;" json:"Job" yaml:"Job"`
	JobHash      string    `gorm:"type:VARBINARY(128);" json:"JobHash" yaml:"JobHash,omitempty"`
	MeasureName  string    `gorm:"type:VARBINARY(64);index;" json:"Measure" yaml:"Measure"`
	QualityValue string    `gorm:"type:VARBINARY(32);" json:"Value" yaml:"Value"`
	Fallback     bool      `json:"Fallback" yaml:"Fallback,omitempty"`
	ParamsJSON   string    `gorm:"type:TEXT;" json:"-" yaml:"Params,omitempty"`
	Clusters     int       `json:"Clusters" yaml:"Clusters,omitempty"`
	Items        int       `json:"Items" yaml:"Items,omitempty"`
	CreatedAt    time.Time `json:"CreatedAt" yaml:"-"`
}

// TableName returns the entity database table name.
func (Quality) TableName() string {
	return "qualities"
}

// NewRunUID returns a random id for grouping the values of one evaluation run.
func NewRunUID() string {
	return uuid.NewV4().String()
}

// NewQuality creates a new entity. Values are stored in their text form,
// which keeps NaN and "not terminated" apart from real numbers.
func NewQuality(runUID, jobName string, m quality.Measure, v quality.Value) *Quality {
	return &Quality{
		RunUID:       runUID,
		JobName:      jobName,
		MeasureName:  m.Name(),
		QualityValue: v.String(),
		Fallback:     v.Fallback,
	}
}

// SetParams stores the measure parameters as JSON.
func (m *Quality) SetParams(p quality.Parameters) {
	if len(p) == 0 {
		m.ParamsJSON = ""
		return
	}

	if j, err := json.Marshal(p); err != nil {
		log.Debugf("entity: %s (encode parameters)", err)
	} else {
		m.ParamsJSON = string(j)
	}
}

// Params returns the measure parameters.
func (m *Quality) Params() quality.Parameters {
	p, err := quality.ParseParameters(m.ParamsJSON)

	if err != nil {
		log.Debugf("entity: %s in quality %d", err, m.ID)
		return quality.Parameters{}
	}

	return p
}

// Value returns the stored quality value.
func (m *Quality) Value() quality.Value {
	v, err := quality.ParseValue(m.QualityValue)

	if err != nil {
		log.Debugf("entity: %s in quality %d", err, m.ID)
		return quality.NotTerminated()
	}

	v.Fallback = m.Fallback

	return v
}

// Measure returns the measure the value was computed with.
func (m *Quality) Measure() (quality.Measure, error) {
	return quality.Find(m.MeasureName)
}

// Create inserts a new row to the database.
func (m *Quality) Create() error {
	db := Db()

	if db == nil {
		return ErrNoDb
	}

	return db.Create(m).Error
}

// Save updates the existing or inserts a new row.
func (m *Quality) Save() error {
	db := Db()

	if db == nil {
		return ErrNoDb
	}

	return db.Save(m).Error
}

// FindQualities returns the values stored for an evaluation run.
func FindQualities(runUID string) (result Qualities, err error) {
	db := Db()

	if db == nil {
		return result, ErrNoDb
	}

	err = db.Where("run_uid = ?", runUID).Order("measure_name, id").Find(&result).Error

	return result, err
}

// BestQuality returns the best value ever stored for a measure, based on
// whether higher or lower values are better for it. Values that did not
// terminate or are NaN lose against every real number.
func BestQuality(measure string) (*Quality, error) {
	db := Db()

	if db == nil {
		return nil, ErrNoDb
	}

	m, err := quality.Find(measure)

	if err != nil {
		return nil, err
	}

	var rows Qualities

	if err := db.Where("measure_name = ?", m.Name()).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	best := 0

	for i := 1; i < len(rows); i++ {
		if m.IsBetterThan(rows[i].Value(), rows[best].Value()) {
			best = i
		}
	}

	return &rows[best], nil
}

// BestQualities returns the best stored value of every measure that has any.
func BestQualities() (result Qualities, err error) {
	db := Db()

	if db == nil {
		return result, ErrNoDb
	}

	var names []string

	if err := db.Model(&Quality{}).Order("measure_name").Pluck("DISTINCT measure_name", &names).Error; err != nil {
		return result, err
	}

	for _, name := range names {
		if q, err := BestQuality(name); err != nil {
			log.Debugf("entity: %s (best %s)", err, name)
		} else {
			result = append(result, *q)
		}
	}

	return result, nil
}

// Run summarizes the stored values of one evaluation run.
type Run struct {
	RunUID   string
	JobName  string
	Measures int
}

// Runs returns the most recent evaluation runs.
func Runs(limit int) (result []Run, err error) {
	db := Db()

	if db == nil {
		return result, ErrNoDb
	}

	err = db.Model(&Quality{}).
		Select("run_uid, job_name, COUNT(*) AS measures").
		Group("run_uid, job_name").
		Order("MAX(id) DESC").
		Limit(limit).
		Scan(&result).Error

	return result, err
}

// DeleteRun removes all values of an evaluation run.
func DeleteRun(runUID string) (int64, error) {
	db := Db()

	if db == nil {
		return 0, ErrNoDb
	}

	res := db.Where("run_uid = ?", runUID).Delete(&Quality{})

	return res.RowsAffected, res.Error
}
