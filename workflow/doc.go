// Copyright (c) AgentCanvas Authors.
// Licensed under the MIT License.

/*
Package workflow 提供工作流定义与可视化画布图模型之间的双向转换。

# 概述

workflow 包实现了 AgentCanvas 控制台的工作流图模型：持久化的线性/分支
步骤列表（WorkflowDefinition.Steps）与编辑器使用的节点/边图（Graph）
之间的双向转换，以及保存/执行前的步骤完整性校验。自动布局由子包
workflow/layout 提供。

# 核心类型与操作

  - Step / StepType        — 封闭的步骤标签联合（agent、tool、condition、
    human、parallel、loop），按 type 判别
  - WorkflowDefinition     — 持久化的工作流定义（步骤 + 可选画布坐标）
  - Graph / Node / Edge    — 编辑器画布图（含 start/end 哨兵节点）
  - BuildGraph             — 步骤列表 → 图（先校验悬空引用，边 ID 确定性）
  - SerializeGraph         — 图 → 步骤列表（start 可达拓扑序，全量输出）
  - IsStepComplete         — 步骤完整性断言，外部用于门控保存/执行
  - ValidateSteps          — 重复 ID 与悬空引用校验（DANGLING_REFERENCE）
  - ParseDefinition 等     — 定义的 JSON / YAML 导入导出与校验

# 纯函数约定

除编辑器对 Graph 的原地修改辅助方法（AddNode/AddEdge/RemoveNode）外，
所有转换与校验均为无副作用的值进值出函数：同一输入必产生相同输出，
不做 I/O，不持有共享可变状态。持久化与传输由外部协作方负责。
*/
package workflow
