package utility

import "testing"

func TestHashPassword_CheckRoundtrip(t *testing.T) {
	hash, err := HashPassword("MatKhau@123")
	if err != nil {
		t.Fatalf("hash mật khẩu lỗi: %v", err)
	}
	if hash == "MatKhau@123" {
		t.Fatal("hash không được trùng mật khẩu gốc")
	}

	if !CheckPassword(hash, "MatKhau@123") {
		t.Error("mật khẩu đúng phải được chấp nhận")
	}
	if CheckPassword(hash, "MatKhau@124") {
		t.Error("mật khẩu sai phải bị từ chối")
	}
	if CheckPassword(hash, "") {
		t.Error("mật khẩu rỗng phải bị từ chối")
	}
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	h1, err := HashPassword("MatKhau@123")
	if err != nil {
		t.Fatalf("hash lần 1 lỗi: %v", err)
	}
	h2, err := HashPassword("MatKhau@123")
	if err != nil {
		t.Fatalf("hash lần 2 lỗi: %v", err)
	}
	if h1 == h2 {
		t.Error("hai lần hash cùng mật khẩu phải khác nhau (salt ngẫu nhiên)")
	}
}
