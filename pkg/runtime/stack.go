package runtime

// EnvStack holds the frames that are current during evaluation, innermost
// last. It is owned by a single evaluation.
type EnvStack struct {
	frames []*Environment
}

func NewEnvStack(root *Environment) *EnvStack {
	s := &EnvStack{}
	if root != nil {
		s.Push(root)
	}
	return s
}

func (s *EnvStack) Push(env *Environment) {
	s.frames = append(s.frames, env)
}

// Pop removes and returns the innermost frame.
func (s *EnvStack) Pop() *Environment {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Replace swaps the innermost frame without changing the depth.
func (s *EnvStack) Replace(env *Environment) {
	if len(s.frames) == 0 {
		s.Push(env)
		return
	}
	s.frames[len(s.frames)-1] = env
}

func (s *EnvStack) Current() *Environment {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *EnvStack) Len() int {
	return len(s.frames)
}

// Truncate drops frames until at most n remain.
func (s *EnvStack) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	for len(s.frames) > n {
		s.Pop()
	}
}
