package school

// Patches are partial records: ID selects the target, nil fields keep the prior value.
// Slices in a patch replace the prior slice wholesale.

type StudentPatch struct {
	ID               string  `json:"id"`
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Grade            *string `json:"grade,omitempty"`
	ClassID          *string `json:"classId,omitempty"`
	ClassName        *string `json:"className,omitempty"`
	ParentID         *string `json:"parentId,omitempty"`
	ParentName       *string `json:"parentName,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	EnrollmentDate   *string `json:"enrollmentDate,omitempty"`
	Status           *Status `json:"status,omitempty" validate:"omitempty,status"`
	Photo            *string `json:"photo,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (p StudentPatch) GetID() string { return p.ID }

// Merge applies p over s. The ID never changes.
func (s Student) Merge(p StudentPatch) Student {
	setStr(&s.FirstName, p.FirstName)
	setStr(&s.LastName, p.LastName)
	setStr(&s.Email, p.Email)
	setStr(&s.Phone, p.Phone)
	setStr(&s.DateOfBirth, p.DateOfBirth)
	setStr(&s.Gender, p.Gender)
	setStr(&s.Grade, p.Grade)
	setStr(&s.ClassID, p.ClassID)
	setStr(&s.ClassName, p.ClassName)
	setStr(&s.ParentID, p.ParentID)
	setStr(&s.ParentName, p.ParentName)
	setStr(&s.Address, p.Address)
	setStr(&s.EmergencyContact, p.EmergencyContact)
	setStr(&s.EnrollmentDate, p.EnrollmentDate)
	setStatus(&s.Status, p.Status)
	setStr(&s.Photo, p.Photo)
	setStr(&s.Notes, p.Notes)
	return s
}

// PatchFrom builds a patch carrying every field of s.
func PatchFrom(s Student) StudentPatch {
	st := s.Status
	return StudentPatch{
		ID:               s.ID,
		FirstName:        &s.FirstName,
		LastName:         &s.LastName,
		Email:            &s.Email,
		Phone:            &s.Phone,
		DateOfBirth:      &s.DateOfBirth,
		Gender:           &s.Gender,
		Grade:            &s.Grade,
		ClassID:          &s.ClassID,
		ClassName:        &s.ClassName,
		ParentID:         &s.ParentID,
		ParentName:       &s.ParentName,
		Address:          &s.Address,
		EmergencyContact: &s.EmergencyContact,
		EnrollmentDate:   &s.EnrollmentDate,
		Status:           &st,
		Photo:            &s.Photo,
		Notes:            &s.Notes,
	}
}

type TeacherPatch struct {
	ID               string   `json:"id"`
	FirstName        *string  `json:"firstName,omitempty"`
	LastName         *string  `json:"lastName,omitempty"`
	Email            *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string  `json:"phone,omitempty"`
	DateOfBirth      *string  `json:"dateOfBirth,omitempty"`
	Gender           *string  `json:"gender,omitempty"`
	Department       *string  `json:"department,omitempty"`
	Subjects         []string `json:"subjects,omitempty"`
	HireDate         *string  `json:"hireDate,omitempty"`
	Qualification    *string  `json:"qualification,omitempty"`
	Status           *Status  `json:"status,omitempty" validate:"omitempty,status"`
	Photo            *string  `json:"photo,omitempty"`
	Address          *string  `json:"address,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

func (p TeacherPatch) GetID() string { return p.ID }

func (t Teacher) Merge(p TeacherPatch) Teacher {
	setStr(&t.FirstName, p.FirstName)
	setStr(&t.LastName, p.LastName)
	setStr(&t.Email, p.Email)
	setStr(&t.Phone, p.Phone)
	setStr(&t.DateOfBirth, p.DateOfBirth)
	setStr(&t.Gender, p.Gender)
	setStr(&t.Department, p.Department)
	setSlice(&t.Subjects, p.Subjects)
	setStr(&t.HireDate, p.HireDate)
	setStr(&t.Qualification, p.Qualification)
	setStatus(&t.Status, p.Status)
	setStr(&t.Photo, p.Photo)
	setStr(&t.Address, p.Address)
	setStr(&t.EmergencyContact, p.EmergencyContact)
	setStr(&t.Notes, p.Notes)
	return t
}

type ClassPatch struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name,omitempty"`
	Grade         *string  `json:"grade,omitempty"`
	TeacherID     *string  `json:"teacherId,omitempty"`
	TeacherName   *string  `json:"teacherName,omitempty"`
	Room          *string  `json:"room,omitempty"`
	Capacity      *int     `json:"capacity,omitempty" validate:"omitempty,min=0"`
	StudentsCount *int     `json:"studentsCount,omitempty" validate:"omitempty,min=0"`
	Subjects      []string `json:"subjects,omitempty"`
	Schedule      *string  `json:"schedule,omitempty"`
	Status        *Status  `json:"status,omitempty" validate:"omitempty,status"`
}

func (p ClassPatch) GetID() string { return p.ID }

func (c Class) Merge(p ClassPatch) Class {
	setStr(&c.Name, p.Name)
	setStr(&c.Grade, p.Grade)
	setStr(&c.TeacherID, p.TeacherID)
	setStr(&c.TeacherName, p.TeacherName)
	setStr(&c.Room, p.Room)
	if p.Capacity != nil {
		c.Capacity = *p.Capacity
	}
	if p.StudentsCount != nil {
		c.StudentsCount = *p.StudentsCount
	}
	setSlice(&c.Subjects, p.Subjects)
	setStr(&c.Schedule, p.Schedule)
	setStatus(&c.Status, p.Status)
	return c
}

type ParentPatch struct {
	ID               string   `json:"id"`
	FirstName        *string  `json:"firstName,omitempty"`
	LastName         *string  `json:"lastName,omitempty"`
	Email            *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string  `json:"phone,omitempty"`
	Relationship     *string  `json:"relationship,omitempty"`
	StudentIDs       []string `json:"studentIds,omitempty"`
	Address          *string  `json:"address,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
	Status           *Status  `json:"status,omitempty" validate:"omitempty,status"`
}

func (p ParentPatch) GetID() string { return p.ID }

func (pa Parent) Merge(p ParentPatch) Parent {
	setStr(&pa.FirstName, p.FirstName)
	setStr(&pa.LastName, p.LastName)
	setStr(&pa.Email, p.Email)
	setStr(&pa.Phone, p.Phone)
	setStr(&pa.Relationship, p.Relationship)
	setSlice(&pa.StudentIDs, p.StudentIDs)
	setStr(&pa.Address, p.Address)
	setStr(&pa.EmergencyContact, p.EmergencyContact)
	setStatus(&pa.Status, p.Status)
	return pa
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setStatus(dst *Status, v *Status) {
	if v != nil {
		*dst = *v
	}
}

func setSlice(dst *[]string, v []string) {
	if v != nil {
		*dst = append([]string(nil), v...)
	}
}
