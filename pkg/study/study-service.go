package study

import (
	studydb "github.com/TheRealJensJK/Studyfront-backend/pkg/db/study"
)

var (
	studyDBService *studydb.StudyDBService
)

func Init(studyDB *studydb.StudyDBService) {
	studyDBService = studyDB
}
