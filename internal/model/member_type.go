package model

// Member type ids form a closed set; rows are seeded once at startup and are
// never written through the API.
const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// MemberType 会员等级（固定参照表）
type MemberType struct {
	ID                 string  `json:"id" gorm:"primaryKey;type:varchar(16)"`
	Discount           float64 `json:"discount" gorm:"not null"`
	PostsLimitPerMonth int     `json:"postsLimitPerMonth" gorm:"not null"`
}

func (MemberType) TableName() string { return "member_types" }
