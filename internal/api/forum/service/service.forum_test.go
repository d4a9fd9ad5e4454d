package forumsvc

import (
	"errors"
	"testing"

	authmodels "agri_connect/internal/api/auth/models"
	models "agri_connect/internal/api/forum/models"
	"agri_connect/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLikeFilters_MutuallyExclusive(t *testing.T) {
	postID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	notYet := notYetLikedFilter(postID, userID)
	already := alreadyLikedFilter(postID, userID)

	if notYet["_id"] != postID || already["_id"] != postID {
		t.Error("Cả hai filter phải ghim _id của bài viết")
	}

	// Nhánh like chỉ khớp khi user chưa có trong likes
	cond, ok := notYet["likes"].(bson.M)
	if !ok {
		t.Fatal("Filter like phải dùng điều kiện $ne trên likes")
	}
	if cond["$ne"] != userID {
		t.Errorf("Điều kiện $ne phải trỏ đúng user, nhận %v", cond["$ne"])
	}

	// Nhánh unlike chỉ khớp khi user đã có trong likes
	if already["likes"] != userID {
		t.Errorf("Filter unlike phải so khớp trực tiếp likes với user, nhận %v", already["likes"])
	}
}

func TestRequireAuthorOrAdmin(t *testing.T) {
	authorID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	post := &models.ForumPost{AuthorID: authorID}

	if err := requireAuthorOrAdmin(post, authorID, authmodels.RoleFarmer); err != nil {
		t.Errorf("Tác giả phải được phép sửa bài của mình, nhận lỗi %v", err)
	}
	if err := requireAuthorOrAdmin(post, otherID, authmodels.RoleAdmin); err != nil {
		t.Errorf("Admin phải được phép sửa mọi bài, nhận lỗi %v", err)
	}
	if err := requireAuthorOrAdmin(post, otherID, authmodels.RoleOfficer); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("User khác không phải admin phải bị từ chối, nhận %v", err)
	}
}
