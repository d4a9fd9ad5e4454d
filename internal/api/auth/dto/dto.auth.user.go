// Package authdto - các DTO đầu vào cho domain auth.
package authdto

// UserLocationInput vị trí của người dùng trong các input profile.
type UserLocationInput struct {
	Province    string    `json:"province,omitempty" validate:"omitempty,no_xss"`
	District    string    `json:"district,omitempty" validate:"omitempty,no_xss"`
	Coordinates []float64 `json:"coordinates,omitempty" validate:"omitempty,len=2"`
}

// UserRegisterInput đầu vào đăng ký tài khoản.
// Role chỉ cho phép farmer hoặc officer, admin được seed khi khởi động server.
type UserRegisterInput struct {
	Name      string             `json:"name" validate:"required,no_xss"`
	Email     string             `json:"email" validate:"required,email"`
	Password  string             `json:"password" validate:"required,strong_password"`
	Phone     string             `json:"phone,omitempty" validate:"omitempty,min=9,max=15"`
	Role      string             `json:"role,omitempty" validate:"omitempty,oneof=farmer officer"`
	Location  *UserLocationInput `json:"location,omitempty"`
	Crops     []string           `json:"crops,omitempty"`
	FarmSize  float64            `json:"farmSize,omitempty" validate:"omitempty,gte=0"`
	Expertise string             `json:"expertise,omitempty" validate:"omitempty,no_xss"`
}

// UserLoginInput đầu vào đăng nhập.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserChangeInfoInput đầu vào thay đổi thông tin người dùng.
type UserChangeInfoInput struct {
	Name      string             `json:"name,omitempty" validate:"omitempty,no_xss"`
	Location  *UserLocationInput `json:"location,omitempty"`
	Crops     []string           `json:"crops,omitempty"`
	FarmSize  float64            `json:"farmSize,omitempty" validate:"omitempty,gte=0"`
	AvatarURL string             `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Bio       string             `json:"bio,omitempty" validate:"omitempty,no_xss,max=500"`
	Expertise string             `json:"expertise,omitempty" validate:"omitempty,no_xss"`
}

// ChangePasswordInput đầu vào đổi mật khẩu.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// RequestPasswordResetInput đầu vào yêu cầu mã đặt lại mật khẩu.
type RequestPasswordResetInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput đầu vào đặt lại mật khẩu bằng mã đã nhận qua email.
type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"required"`
}

// UnBlockUserInput đầu vào mở khóa người dùng.
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
}
