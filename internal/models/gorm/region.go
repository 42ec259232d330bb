package gorm

type Region struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;not null"`

	Servers []Server `gorm:"foreignKey:RegionID"`
}

func (Region) TableName() string {
	return "regions"
}

type Server struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RegionID uint   `gorm:"column:region_id;not null;index"`
	Name     string `gorm:"column:name;uniqueIndex;not null"`

	Region Region `gorm:"foreignKey:RegionID"`
}

func (Server) TableName() string {
	return "servers"
}
