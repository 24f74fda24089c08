package schedule

import "focuscal/internal/model"

// SeedEntries returns the fixed example entries used to populate an empty or
// unreadable store on first load.
func SeedEntries() []model.ScheduleEntry {
	return []model.ScheduleEntry{
		{
			ID:          1,
			Name:        "코딩 작업",
			Description: "프론트엔드 대시보드 기능 구현",
			CreatedAt:   "2025-11-05",
			StartDate:   "2025-11-08",
			StartTime:   "15:00",
			DueDate:     "2025-11-08",
			DueTime:     "23:00",
		},
		{
			ID:          2,
			Name:        "팀 회의",
			Description: "AI 시스템 진행 상황 점검",
			CreatedAt:   "2025-11-06",
			StartDate:   "2025-11-09",
			StartTime:   "14:00",
			DueDate:     "2025-11-09",
			DueTime:     "15:00",
		},
		{
			ID:          3,
			Name:        "문서 작성",
			Description: "발표 자료 정리",
			CreatedAt:   "2025-11-06",
			StartDate:   "2025-11-11",
			StartTime:   "09:00",
			DueDate:     "2025-11-11",
			DueTime:     "11:30",
		},
	}
}
