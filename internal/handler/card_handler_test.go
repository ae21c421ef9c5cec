package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
)

func setupCardRouter(userID uuid.UUID, svc *MockCardService) http.Handler {
	h := NewCardHandler(svc, nopLogger())
	router := newTestRouter(userID)
	cards := router.Group("/boards/:boardId/cards")
	cards.GET("", h.GetCards)
	cards.POST("", h.CreateCard)
	cards.GET("/user/:userId", h.GetCardsByOwner)
	cards.GET("/:cardId", h.GetCard)
	cards.PUT("/:cardId", h.UpdateCard)
	cards.DELETE("/:cardId", h.DeleteCard)
	return router
}

func TestCardHandler(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	cardID := uuid.New()
	base := fmt.Sprintf("/boards/%s/cards", boardID)

	tests := []struct {
		name        string
		method      string
		path        string
		body        interface{}
		mockService func(*MockCardService)
		wantStatus  int
	}{
		{
			name:   "성공: Card 생성",
			method: http.MethodPost,
			path:   base,
			body:   dto.CreateCardRequest{Name: "Backend"},
			mockService: func(m *MockCardService) {
				m.CreateCardFunc = func(ctx context.Context, uid, bid uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
					return &dto.CardResponse{ID: cardID, BoardID: bid, Name: req.Name, OwnerID: uid, ListMember: []uuid.UUID{uid}}, nil
				}
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "실패: 이름 누락",
			method:      http.MethodPost,
			path:        base,
			body:        map[string]string{"description": "x"},
			mockService: func(m *MockCardService) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "성공: 소유자별 목록",
			method:      http.MethodGet,
			path:        base + "/user/" + userID.String(),
			mockService: func(m *MockCardService) {},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "실패: 잘못된 소유자 ID",
			method:      http.MethodGet,
			path:        base + "/user/abc",
			mockService: func(m *MockCardService) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:   "실패: 다른 Board의 Card",
			method: http.MethodGet,
			path:   base + "/" + cardID.String(),
			mockService: func(m *MockCardService) {
				m.GetCardFunc = func(ctx context.Context, uid, bid, cid uuid.UUID) (*dto.CardResponse, error) {
					return nil, response.NewAppError(response.ErrCodeValidation, "Card does not belong to board", "")
				}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "실패: Card 소유자가 아님",
			method: http.MethodPut,
			path:   base + "/" + cardID.String(),
			body:   map[string]string{"name": "renamed"},
			mockService: func(m *MockCardService) {
				m.UpdateCardFunc = func(ctx context.Context, uid, bid, cid uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
					return nil, response.NewAppError(response.ErrCodeForbidden, "Not allowed", "")
				}
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:        "성공: Card 삭제",
			method:      http.MethodDelete,
			path:        base + "/" + cardID.String(),
			mockService: func(m *MockCardService) {},
			wantStatus:  http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCardService{}
			tt.mockService(svc)

			w := performRequest(setupCardRouter(userID, svc), tt.method, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusCreated {
				var card dto.CardResponse
				decodeData(t, w, &card)
				assert.Equal(t, []uuid.UUID{userID}, card.ListMember)
			}
		})
	}
}
