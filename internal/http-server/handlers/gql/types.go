package gql

import "SchoolQL/entity"

type schoolResolver struct {
	s entity.School
}

func (r *schoolResolver) ID() int32               { return int32(r.s.ID) }
func (r *schoolResolver) SchoolName() string      { return r.s.Name }
func (r *schoolResolver) SchoolPopulation() int32 { return int32(r.s.Population) }
func (r *schoolResolver) Status() string          { return string(r.s.Status) }
func (r *schoolResolver) Address() *addressResolver {
	return &addressResolver{a: r.s.Address}
}

type addressResolver struct {
	a entity.Address
}

func (r *addressResolver) Street() string     { return r.a.Street }
func (r *addressResolver) City() string       { return r.a.City }
func (r *addressResolver) State() string      { return r.a.State }
func (r *addressResolver) PostalCode() string { return r.a.PostalCode }

type addressInput struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

func (a addressInput) entity() entity.Address {
	return entity.Address{Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode}
}

func schoolList(schools []entity.School) []*schoolResolver {
	out := make([]*schoolResolver, len(schools))
	for i := range schools {
		out[i] = &schoolResolver{s: schools[i]}
	}
	return out
}

// payload is shared by the three mutation results. The GraphQL names of the
// success flag differ per mutation.
type payload struct {
	res entity.MutationResult
}

func (p payload) School() *schoolResolver {
	if p.res.School == nil {
		return nil
	}
	return &schoolResolver{s: *p.res.School}
}

func (p payload) Err() *string { return p.res.Err }

type addPayload struct{ payload }

func (p *addPayload) Created() bool { return p.res.Success }

type updatePayload struct{ payload }

func (p *updatePayload) Updated() bool { return p.res.Success }

type deletePayload struct{ payload }

func (p *deletePayload) Deactivated() bool { return p.res.Success }
func (p *deletePayload) Deleted() bool     { return false }
