package boltpersistence

import (
	"time"

	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
)

func marshalExecution(x persistence.Execution) *pb.Execution {
	return &pb.Execution{
		Id:                x.ID,
		ProcessInstanceId: x.ProcessInstanceID,
		ParentId:          x.ParentID,
		DefinitionId:      x.DefinitionID,
		ActivityId:        x.ActivityID,
		IsConcurrent:      x.IsConcurrent,
		IsScope:           x.IsScope,
		IsActive:          x.IsActive,
		IsEnded:           x.IsEnded,
		Revision:          x.Revision,
	}
}

func unmarshalExecution(rec *pb.Execution) persistence.Execution {
	return persistence.Execution{
		ID:                rec.GetId(),
		ProcessInstanceID: rec.GetProcessInstanceId(),
		ParentID:          rec.GetParentId(),
		DefinitionID:      rec.GetDefinitionId(),
		ActivityID:        rec.GetActivityId(),
		IsConcurrent:      rec.GetIsConcurrent(),
		IsScope:           rec.GetIsScope(),
		IsActive:          rec.GetIsActive(),
		IsEnded:           rec.GetIsEnded(),
		Revision:          rec.GetRevision(),
	}
}

func marshalVariable(v persistence.Variable) *pb.Variable {
	return &pb.Variable{
		ExecutionId:       v.ExecutionID,
		ProcessInstanceId: v.ProcessInstanceID,
		Name:              v.Name,
		Type:              v.Type,
		MediaType:         v.MediaType,
		Data:              v.Data,
		Revision:          v.Revision,
	}
}

func unmarshalVariable(rec *pb.Variable) persistence.Variable {
	return persistence.Variable{
		ExecutionID:       rec.GetExecutionId(),
		ProcessInstanceID: rec.GetProcessInstanceId(),
		Name:              rec.GetName(),
		Type:              rec.GetType(),
		MediaType:         rec.GetMediaType(),
		Data:              rec.GetData(),
		Revision:          rec.GetRevision(),
	}
}

func marshalJob(j persistence.Job) *pb.Job {
	return &pb.Job{
		Id:                j.ID,
		Type:              j.Type,
		DueDate:           marshalTime(j.DueDate),
		ExecutionId:       j.ExecutionID,
		ProcessInstanceId: j.ProcessInstanceID,
		DefinitionId:      j.DefinitionID,
		ActivityId:        j.ActivityID,
		Payload:           j.Payload,
		Retries:           int64(j.Retries),
		LockOwner:         j.LockOwner,
		LockExpiresAt:     marshalTime(j.LockExpiresAt),
		Exclusive:         j.Exclusive,
		Priority:          j.Priority,
		Suspended:         j.Suspended,
		ExceptionMessage:  j.ExceptionMessage,
		CreatedAt:         marshalTime(j.CreatedAt),
		Revision:          j.Revision,
	}
}

func unmarshalJob(rec *pb.Job) persistence.Job {
	return persistence.Job{
		ID:                rec.GetId(),
		Type:              rec.GetType(),
		DueDate:           unmarshalTime(rec.GetDueDate()),
		ExecutionID:       rec.GetExecutionId(),
		ProcessInstanceID: rec.GetProcessInstanceId(),
		DefinitionID:      rec.GetDefinitionId(),
		ActivityID:        rec.GetActivityId(),
		Payload:           rec.GetPayload(),
		Retries:           int(rec.GetRetries()),
		LockOwner:         rec.GetLockOwner(),
		LockExpiresAt:     unmarshalTime(rec.GetLockExpiresAt()),
		Exclusive:         rec.GetExclusive(),
		Priority:          rec.GetPriority(),
		Suspended:         rec.GetSuspended(),
		ExceptionMessage:  rec.GetExceptionMessage(),
		CreatedAt:         unmarshalTime(rec.GetCreatedAt()),
		Revision:          rec.GetRevision(),
	}
}

func marshalIncident(i persistence.Incident) *pb.Incident {
	return &pb.Incident{
		Id:                i.ID,
		JobId:             i.JobID,
		ProcessInstanceId: i.ProcessInstanceID,
		ExecutionId:       i.ExecutionID,
		ActivityId:        i.ActivityID,
		Message:           i.Message,
		CreatedAt:         marshalTime(i.CreatedAt),
		Revision:          i.Revision,
	}
}

func unmarshalIncident(rec *pb.Incident) persistence.Incident {
	return persistence.Incident{
		ID:                rec.GetId(),
		JobID:             rec.GetJobId(),
		ProcessInstanceID: rec.GetProcessInstanceId(),
		ExecutionID:       rec.GetExecutionId(),
		ActivityID:        rec.GetActivityId(),
		Message:           rec.GetMessage(),
		CreatedAt:         unmarshalTime(rec.GetCreatedAt()),
		Revision:          rec.GetRevision(),
	}
}

// marshalTime returns t as Unix nanoseconds. The zero time is stored as 0.
func marshalTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func unmarshalTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
