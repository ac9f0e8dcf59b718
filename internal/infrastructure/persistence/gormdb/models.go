package gormdb

// PermissionModel é o model GORM do catálogo de permissões
type PermissionModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt *int64 `gorm:"autoCreateTime:false;index"` // nulo para registros legados
}

func (PermissionModel) TableName() string {
	return "permissions"
}

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email_active,where:deleted_at IS NULL"`
	Name         string `gorm:"type:varchar(500);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null;index"`
	CreatedAt    int64  `gorm:"autoCreateTime;index"`
	UpdatedAt    int64  `gorm:"autoUpdateTime"`
	DeletedAt    *int64 `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}
