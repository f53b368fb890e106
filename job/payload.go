package job

import (
	"fmt"
	"sort"

	"github.com/dogmatiq/marshalkit"
	"github.com/operaton/operaton-sub059/job/internal/pb"
	"github.com/operaton/operaton-sub059/variable"
	"google.golang.org/protobuf/proto"
)

// EncodePayload returns the binary representation of c.
//
// m is used to marshal object variables.
func EncodePayload(m marshalkit.ValueMarshaler, c Continuation) ([]byte, error) {
	p := &pb.Continuation{
		Kind:         string(c.Kind),
		ExecutionId:  c.ExecutionID,
		ActivityId:   c.ActivityID,
		TransitionId: c.TransitionID,
		Transitions:  c.Transitions,
		Signal:       c.Signal,
	}

	names := make([]string, 0, len(c.Variables))
	for n := range c.Variables {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		s, err := variable.Serialize(m, c.Variables[n])
		if err != nil {
			return nil, fmt.Errorf("unable to encode variable '%s': %w", n, err)
		}

		p.Variables = append(p.Variables, &pb.Variable{
			Name:      n,
			Type:      s.Type,
			MediaType: s.MediaType,
			Data:      s.Data,
		})
	}

	return proto.Marshal(p)
}

// DecodePayload returns the continuation encoded in data.
func DecodePayload(m marshalkit.ValueMarshaler, data []byte) (Continuation, error) {
	p := &pb.Continuation{}
	if err := proto.Unmarshal(data, p); err != nil {
		return Continuation{}, fmt.Errorf("unable to decode job payload: %w", err)
	}

	k := ResumeKind(p.GetKind())

	switch k {
	case BeforeActivity, AfterActivity, OnTransition, TimerFired, SignalDelivery:
	default:
		return Continuation{}, fmt.Errorf("unable to decode job payload: unrecognized resume kind '%s'", k)
	}

	c := Continuation{
		Kind:         k,
		ExecutionID:  p.GetExecutionId(),
		ActivityID:   p.GetActivityId(),
		TransitionID: p.GetTransitionId(),
		Transitions:  p.GetTransitions(),
		Signal:       p.GetSignal(),
	}

	if vars := p.GetVariables(); len(vars) > 0 {
		c.Variables = make(variable.Map, len(vars))

		for _, pv := range vars {
			v, err := variable.Deserialize(m, variable.Serialized{
				Type:      pv.GetType(),
				MediaType: pv.GetMediaType(),
				Data:      pv.GetData(),
			})
			if err != nil {
				return Continuation{}, fmt.Errorf("unable to decode variable '%s': %w", pv.GetName(), err)
			}
			c.Variables[pv.GetName()] = v
		}
	}

	return c, nil
}
