package interest

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// InterestHandler 处理兴趣分类相关的请求
type InterestHandler struct {
	interestService service.InterestServiceInterface
}

func NewInterestHandler(interestService service.InterestServiceInterface) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

func (h *InterestHandler) ListCategories(c *gin.Context) {
	categories, err := h.interestService.ListCategories()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, categories, "")
}

func (h *InterestHandler) ListSubCategories(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的分类ID"))
		return
	}

	subs, err := h.interestService.ListSubCategories(categoryID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, subs, "")
}

type addInterestRequest struct {
	SubCategoryID int `json:"subcategory_id" binding:"required"`
}

// AddInterest 添加兴趣，重复添加返回已有记录
func (h *InterestHandler) AddInterest(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req addInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	interest, created, err := h.interestService.AddUserInterest(userID, req.SubCategoryID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	message := "兴趣已添加"
	if !created {
		message = "已添加过该兴趣"
	}
	errors.HandleSuccess(c, interest, message)
}

func (h *InterestHandler) ListMyInterests(c *gin.Context) {
	userID := c.GetInt("user_id")

	interests, err := h.interestService.ListUserInterests(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, interests, "")
}

func (h *InterestHandler) RemoveInterest(c *gin.Context) {
	userID := c.GetInt("user_id")
	interestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的兴趣ID"))
		return
	}

	if err := h.interestService.RemoveUserInterest(userID, interestID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "兴趣已移除")
}
