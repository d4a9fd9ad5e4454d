package global

import "testing"

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	safe := []string{
		"Kỹ thuật bón phân cho lúa vụ Đông Xuân",
		"Giá cà phê hôm nay tăng 5%",
		"Liên hệ: 0912 345 678",
	}
	for _, v := range safe {
		if err := Validate.Var(v, "no_xss"); err != nil {
			t.Errorf("chuỗi an toàn bị từ chối: %q", v)
		}
	}

	dangerous := []string{
		"<script>alert(1)</script>",
		"Click <SCRIPT src=x>",
		"javascript:void(0)",
		"<img src=x onerror=alert(1)>",
		"<iframe src=//evil>",
	}
	for _, v := range dangerous {
		if err := Validate.Var(v, "no_xss"); err == nil {
			t.Errorf("chuỗi nguy hiểm phải bị từ chối: %q", v)
		}
	}
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	valid := []string{
		"MatKhau123",  // hoa + thường + số
		"matkhau@123", // thường + số + đặc biệt
		"MATKHAU@123", // hoa + số + đặc biệt
	}
	for _, v := range valid {
		if err := Validate.Var(v, "strong_password"); err != nil {
			t.Errorf("mật khẩu đạt chuẩn bị từ chối: %q", v)
		}
	}

	invalid := []string{
		"Mk@1",       // quá ngắn
		"matkhauabc", // chỉ 1 nhóm ký tự
		"matkhau123", // chỉ 2 nhóm ký tự
		"12345678",   // chỉ số
	}
	for _, v := range invalid {
		if err := Validate.Var(v, "strong_password"); err == nil {
			t.Errorf("mật khẩu yếu phải bị từ chối: %q", v)
		}
	}
}

func TestValidatePlatformRole(t *testing.T) {
	InitValidator()

	for _, role := range []string{"farmer", "officer", "admin"} {
		if err := Validate.Var(role, "platform_role"); err != nil {
			t.Errorf("role hợp lệ bị từ chối: %q", role)
		}
	}
	for _, role := range []string{"", "superadmin", "Farmer"} {
		if err := Validate.Var(role, "platform_role"); err == nil {
			t.Errorf("role không hợp lệ phải bị từ chối: %q", role)
		}
	}
}
