package user

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"
	"social-network-backend/internal/storage"
	"social-network-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 处理用户资料相关的请求
type ProfileHandler struct {
	userService service.UserServiceInterface
	storage     storage.Storage
}

func NewProfileHandler(userService service.UserServiceInterface, st storage.Storage) *ProfileHandler {
	return &ProfileHandler{userService: userService, storage: st}
}

// Me 返回当前登录用户
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "")
}

// GetUser 查看指定用户的公开资料
func (h *ProfileHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的用户ID"))
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "")
}

type updateProfileRequest struct {
	Bio string `json:"bio" binding:"max=500"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	user, err := h.userService.UpdateProfile(userID, req.Bio)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "资料已更新")
}

// UploadAvatar 上传头像并更新用户资料
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少头像文件"))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	url, err := h.storage.UploadFile(file, "avatars/"+filename)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传头像失败", err))
		return
	}

	user, err := h.userService.UpdateAvatar(userID, url)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "头像已更新")
}

// DeleteAccount 删除当前账号
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetInt("user_id")
	if err := h.userService.DeleteAccount(userID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "账号已删除")
}
