package service

import (
	"gig-marketplace-api/internal/entity"
)

func mapJob(j *entity.Job) *entity.JobOutputModel {
	return &entity.JobOutputModel{
		Id:          j.Id.String(),
		OwnerId:     j.OwnerId.String(),
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Budget:      j.Budget,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt,
	}
}

func mapJobs(jobs []entity.Job) []entity.JobOutputModel {
	s := make([]entity.JobOutputModel, 0)
	for _, job := range jobs {
		s = append(s, *mapJob(&job))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:           b.Id.String(),
		JobId:        b.JobId.String(),
		FreelancerId: b.FreelancerId.String(),
		Message:      b.Message,
		Price:        b.Price,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}
