package user

type CreateUserInput struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" form:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name" form:"name" binding:"max=100" example:"John Doe"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=user admin" example:"admin"`
}

type UserDTO struct {
	Uid       uint   `json:"u_id" example:"123"`
	Email     string `json:"email" example:"user@example.com"`
	Name      string `json:"name" example:"John Doe"`
	Role      string `json:"role" example:"user"`
	CreatedAt string `json:"create_at" example:"2025-07-17 15:20:41"`
	IsAdmin   bool   `json:"is_admin" example:"false"`
}
