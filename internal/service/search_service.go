package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"github.com/meilisearch/meilisearch-go"
)

const userIndexName = "users"

// UserSearch indexes users for admin search. Implementations must tolerate
// the search backend being down; queries fall back to the database.
type UserSearch interface {
	SearchUsers(ctx context.Context, term string) ([]*model.User, error)
	IndexUser(user *model.User)
	RemoveUser(id uint)
	ReindexAll(ctx context.Context) error
}

type userSearchService struct {
	client   meilisearch.ServiceManager
	userRepo repository.UserRepository
}

// userDocument is the indexed shape. Password hashes never reach the index.
type userDocument struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func NewUserSearchService(client meilisearch.ServiceManager, userRepo repository.UserRepository) UserSearch {
	s := &userSearchService{client: client, userRepo: userRepo}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *userSearchService) initIndex() {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        userIndexName,
		PrimaryKey: "id",
	})
	if err != nil {
		log.Printf("Failed to create meilisearch users index: %v", err)
		return
	}

	_, err = s.client.Index(userIndexName).UpdateSearchableAttributes(&[]string{
		"first_name", "last_name", "email",
	})
	if err != nil {
		log.Printf("Failed to configure users index: %v", err)
	}
}

func toDocument(user *model.User) userDocument {
	return userDocument{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
	}
}

// SearchUsers queries the index and hydrates full rows from the database.
// Any index failure degrades to a plain database LIKE search.
func (s *userSearchService) SearchUsers(ctx context.Context, term string) ([]*model.User, error) {
	if s.client == nil || term == "" {
		return s.userRepo.Search(ctx, term)
	}

	res, err := s.client.Index(userIndexName).Search(term, &meilisearch.SearchRequest{
		Limit: 100,
	})
	if err != nil {
		log.Printf("Meilisearch query failed, falling back to database: %v", err)
		return s.userRepo.Search(ctx, term)
	}

	users := make([]*model.User, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc userDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		user, err := s.userRepo.FindByID(ctx, doc.ID)
		if err != nil {
			continue // index may lag a delete
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *userSearchService) IndexUser(user *model.User) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(userIndexName).AddDocuments([]userDocument{toDocument(user)}, nil); err != nil {
		log.Printf("Failed to index user %d: %v", user.ID, err)
	}
}

func (s *userSearchService) RemoveUser(id uint) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(userIndexName).DeleteDocument(strconv.FormatUint(uint64(id), 10)); err != nil {
		log.Printf("Failed to remove user %d from index: %v", id, err)
	}
}

func (s *userSearchService) ReindexAll(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	docs := make([]userDocument, 0, len(users))
	for _, u := range users {
		docs = append(docs, toDocument(u))
	}
	if len(docs) == 0 {
		return nil
	}
	_, err = s.client.Index(userIndexName).AddDocuments(docs, nil)
	return err
}
