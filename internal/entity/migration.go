package entity

// Migration records the last applied migrator version.
type Migration struct {
	ID      int `gorm:"primaryKey"`
	Version int
}
