package consultationsvc

import (
	"testing"

	models "agri_connect/internal/api/consultation/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPendingFeedbackFilter(t *testing.T) {
	id := primitive.NewObjectID()
	farmerID := primitive.NewObjectID()

	filter := pendingFeedbackFilter(id, farmerID)

	if filter["_id"] != id {
		t.Error("Filter phải ghim _id của phiên tư vấn")
	}
	if filter["farmerId"] != farmerID {
		t.Error("Filter phải ghim đúng nông dân sở hữu phiên")
	}
	if filter["status"] != models.StatusCompleted {
		t.Errorf("Chỉ phiên completed mới nhận feedback, filter dùng %v", filter["status"])
	}

	// So khớp tường minh với null: document đã có feedback sẽ không khớp,
	// nên hai request trùng nhau chỉ ghi được một feedback
	value, present := filter["feedback"]
	if !present {
		t.Fatal("Filter phải chứa điều kiện feedback")
	}
	if value != nil {
		t.Errorf("Điều kiện feedback phải là null, nhận %v", value)
	}
}
