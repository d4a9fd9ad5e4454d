package chatsvc

import (
	"testing"

	models "agri_connect/internal/api/chat/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSortParticipants_OrderIndependent(t *testing.T) {
	a, _ := primitive.ObjectIDFromHex("64f000000000000000000001")
	b, _ := primitive.ObjectIDFromHex("64f000000000000000000002")

	ab := sortParticipants(a, b)
	ba := sortParticipants(b, a)

	if len(ab) != 2 || len(ba) != 2 {
		t.Fatal("cặp participant phải luôn có đúng 2 phần tử")
	}
	if ab[0] != ba[0] || ab[1] != ba[1] {
		t.Error("(a,b) và (b,a) phải chuẩn hóa về cùng một thứ tự")
	}
	if ab[0].Hex() > ab[1].Hex() {
		t.Error("cặp participant phải sắp theo hex tăng dần")
	}
}

func TestIsParticipant(t *testing.T) {
	a, _ := primitive.ObjectIDFromHex("64f000000000000000000001")
	b, _ := primitive.ObjectIDFromHex("64f000000000000000000002")
	outsider, _ := primitive.ObjectIDFromHex("64f000000000000000000003")

	chat := &models.Chat{Participants: []primitive.ObjectID{a, b}}

	if !isParticipant(chat, a) {
		t.Error("participant phải được nhận diện")
	}
	if !isParticipant(chat, b) {
		t.Error("participant phải được nhận diện")
	}
	if isParticipant(chat, outsider) {
		t.Error("người ngoài hội thoại không được coi là participant")
	}
}
